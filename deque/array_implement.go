package deque

import (
	"thermal/model"
)

const (
	// 数组大小基数
	base = 8
)

// ArrDeque is a ring buffer. A capacity <= 0 means the deque grows without
// bound; otherwise AddLast evicts the first element and AddFirst evicts the
// last one once the deque is full.
type ArrDeque struct {
	arr ArrType

	// 头部元素下标
	start int
	// 元素个数
	size int
	// 容量上限，0 表示不限
	capacity int
}

type ArrType []model.StepData

var _ Deque = (*ArrDeque)(nil)

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 0 {
		capacity = 0
	}
	n := capacity
	if n == 0 {
		n = base
	}
	return &ArrDeque{
		arr:      make(ArrType, roundUp(n)),
		capacity: capacity,
	}
}

func roundUp(n int) int {
	if remainder := n % base; remainder != 0 {
		n = n - remainder + base
	}
	return n
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) IsEmpty() bool {
	return ad.size == 0
}

func (ad *ArrDeque) IsFull() bool {
	return ad.capacity > 0 && ad.size == ad.capacity
}

func (ad *ArrDeque) index(i int) int {
	return (ad.start + i) % len(ad.arr)
}

func (ad *ArrDeque) Get(i int) model.StepData {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.index(i)]
}

func (ad *ArrDeque) Traverse(f func(i int, item *model.StepData)) {
	for i := 0; i < ad.size; i++ {
		f(i, &ad.arr[ad.index(i)])
	}
}

func (ad *ArrDeque) Items() []model.StepData {
	items := make([]model.StepData, 0, ad.size)
	ad.Traverse(func(_ int, item *model.StepData) {
		items = append(items, *item)
	})
	return items
}

// 数组已满且不限容量时扩容为两倍
func (ad *ArrDeque) grow() {
	arr := make(ArrType, roundUp(len(ad.arr)*2))
	for i := 0; i < ad.size; i++ {
		arr[i] = ad.arr[ad.index(i)]
	}
	ad.arr = arr
	ad.start = 0
}

func (ad *ArrDeque) AddLast(item model.StepData) {
	if ad.IsFull() {
		ad.RemoveFirst()
	} else if ad.size == len(ad.arr) {
		ad.grow()
	}
	ad.arr[ad.index(ad.size)] = item
	ad.size++
}

func (ad *ArrDeque) AddFirst(item model.StepData) {
	if ad.IsFull() {
		ad.RemoveLast()
	} else if ad.size == len(ad.arr) {
		ad.grow()
	}
	ad.start = (ad.start - 1 + len(ad.arr)) % len(ad.arr)
	ad.arr[ad.start] = item
	ad.size++
}

func (ad *ArrDeque) RemoveFirst() (model.StepData, bool) {
	if ad.size == 0 {
		return model.StepData{}, false
	}
	item := ad.arr[ad.start]
	ad.arr[ad.start] = model.StepData{}
	ad.start = (ad.start + 1) % len(ad.arr)
	ad.size--
	return item, true
}

func (ad *ArrDeque) RemoveLast() (model.StepData, bool) {
	if ad.size == 0 {
		return model.StepData{}, false
	}
	i := ad.index(ad.size - 1)
	item := ad.arr[i]
	ad.arr[i] = model.StepData{}
	ad.size--
	return item, true
}
