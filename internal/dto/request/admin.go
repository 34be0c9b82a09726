package request

// ConfirmRequest carries the user's answer to a confirmation prompt.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// TableQuery is read from the query string of a table route.
type TableQuery struct {
	Search string
	Sort   string
	Desc   bool
	Page   int
}
