package types

// Status is a type for the lifecycle status of a stored resource.
// It tracks whether a resource should be included in queries by default.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}
