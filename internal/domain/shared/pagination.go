package shared

// DefaultPageSize is applied to list queries when the caller does not
// request a page size. Response metadata must report the same value.
const DefaultPageSize = 50
