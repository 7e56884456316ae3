package model

type ActivityKind string

const (
	ActivityAdd      ActivityKind = "task.add"
	ActivityStart    ActivityKind = "task.start"
	ActivityPause    ActivityKind = "task.pause"
	ActivityFinish   ActivityKind = "task.finish"
	ActivityDelete   ActivityKind = "task.delete"
	ActivityPostpone ActivityKind = "task.postpone"
	ActivityBring    ActivityKind = "task.bring"
)

// Activity records a lifecycle change of a task at a point in time.
// Task is a copy taken right after the change.
type Activity struct {
	Kind   ActivityKind
	Task   Task
	Day    Date
	Minute int
}
