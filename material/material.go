package material

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// 常用材料的导热系数，单位 W/(m·K)，室温附近取值
type Material struct {
	Name         string
	Conductivity float64
}

var materials = map[string]Material{
	"steel":     {Name: "碳钢", Conductivity: 43.0},
	"stainless": {Name: "不锈钢", Conductivity: 16.2},
	"iron":      {Name: "纯铁", Conductivity: 80.2},
	"aluminium": {Name: "铝", Conductivity: 237.0},
	"copper":    {Name: "铜", Conductivity: 401.0},
	"brick":     {Name: "耐火砖", Conductivity: 1.0},
	"concrete":  {Name: "混凝土", Conductivity: 1.4},
}

// 根据材料编号获取物性参数
func Lookup(key string) (Material, bool) {
	m, ok := materials[strings.ToLower(strings.TrimSpace(key))]
	if ok {
		log.WithFields(log.Fields{
			"material":     key,
			"conductivity": m.Conductivity,
		}).Debug("获取材料物性参数")
	}
	return m, ok
}

func Keys() []string {
	keys := make([]string, 0, len(materials))
	for k := range materials {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
