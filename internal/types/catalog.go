package types

// ServiceFilter represents the filter for listing catalog services
type ServiceFilter struct {
	*QueryFilter

	ServiceIDs []string `form:"service_ids"`
	IsActive   *bool    `form:"is_active"`
}

// Validate validates the service filter
func (f *ServiceFilter) Validate() error {
	if f == nil {
		return nil
	}
	return f.QueryFilter.Validate()
}

// GetLimit implements BaseFilter interface
func (f *ServiceFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *ServiceFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited returns true if the filter has no limit
func (f *ServiceFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

// BroadcastFilter represents the filter for listing broadcast messages
type BroadcastFilter struct {
	*QueryFilter

	IsActive *bool `form:"is_active"`
}

// Validate validates the broadcast filter
func (f *BroadcastFilter) Validate() error {
	if f == nil {
		return nil
	}
	return f.QueryFilter.Validate()
}

// GetLimit implements BaseFilter interface
func (f *BroadcastFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *BroadcastFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited returns true if the filter has no limit
func (f *BroadcastFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
