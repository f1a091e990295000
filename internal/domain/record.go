package domain

// Record is implemented by every stored entity. Methods use value receivers and
// return fresh copies, so a stored Record never aliases caller-owned slices.
type Record[T any] interface {
	GetID() string
	WithID(id string) T
	Clone() T
}

var (
	_ Record[Exercise] = Exercise{}
	_ Record[Training] = Training{}
	_ Record[Workout]  = Workout{}
)
