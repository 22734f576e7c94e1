package boundary

import (
	"fmt"

	"go.uber.org/multierr"

	"thermal/model"
)

// 表面编号
// x 方向: Left(x = 0), Right(x = n-1)
// y 方向: Bottom(y = 0), Top(y = n-1)
// z 方向: Back(z = 0), Front(z = n-1)
type Face uint8

const (
	Left Face = iota
	Right
	Bottom
	Top
	Back
	Front
)

var faceNames = [...]string{"left", "right", "bottom", "top", "back", "front"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}

// 表面所在的坐标轴，0 = x, 1 = y, 2 = z
func (f Face) Axis() int {
	return int(f) / 2
}

// 是否位于坐标最大值一侧
func (f Face) IsFront() bool {
	return f%2 == 1
}

// 坐标轴 axis 上的一侧表面
func FaceOf(axis int, front bool) Face {
	f := Face(axis * 2)
	if front {
		f++
	}
	return f
}

func Faces() [6]Face {
	return [6]Face{Left, Right, Bottom, Top, Back, Front}
}

// 六个表面的边界条件
type Set struct {
	Left   Condition
	Right  Condition
	Bottom Condition
	Top    Condition
	Back   Condition
	Front  Condition
}

// 六个表面使用同一边界条件
func Uniform(c Condition) Set {
	return Set{Left: c, Right: c, Bottom: c, Top: c, Back: c, Front: c}
}

func (s *Set) Get(f Face) *Condition {
	switch f {
	case Left:
		return &s.Left
	case Right:
		return &s.Right
	case Bottom:
		return &s.Bottom
	case Top:
		return &s.Top
	case Back:
		return &s.Back
	case Front:
		return &s.Front
	}
	panic(fmt.Sprintf("boundary: no such face %d", f))
}

// 校验全部表面，返回所有错误
func (s *Set) Validate() error {
	var err error
	for _, f := range Faces() {
		if e := s.Get(f).Validate(); e != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", f, e))
		}
	}
	return err
}

func SetFromCfg(setup model.Setup) (Set, error) {
	cfgs := [6]model.ConditionCfg{setup.Left, setup.Right, setup.Bottom, setup.Top, setup.Back, setup.Front}
	var (
		set Set
		err error
	)
	for i, f := range Faces() {
		c, e := FromCfg(cfgs[i])
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", f, e))
			continue
		}
		*set.Get(f) = c
	}
	return set, err
}
