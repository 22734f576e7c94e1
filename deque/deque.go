/**
 *
 * 利用数组实现双端队列，用于保存迭代过程中周期性记录的温度场
 * 队列有容量上限时，在尾部加入新元素会挤出头部最早的元素
 *
 */

package deque

import "thermal/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 获取队列中对应下标的元素
	Get(i int) model.StepData

	// 正向遍历
	Traverse(f func(i int, item *model.StepData))

	// 按顺序复制出所有元素
	Items() []model.StepData

	// 在队列结尾增加一个元素
	AddLast(item model.StepData)

	// 在队列结尾删除一个元素
	RemoveLast() (model.StepData, bool)

	// 在队列头部增加一个元素
	AddFirst(item model.StepData)

	// 在队列头部删除一个元素
	RemoveFirst() (model.StepData, bool)

	IsFull() bool

	IsEmpty() bool
}
