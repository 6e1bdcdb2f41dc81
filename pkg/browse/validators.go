package browse

// BrowseQuery contains query parameters for the browse endpoints.
type BrowseQuery struct {
	Path  string `query:"path" json:"path,omitempty" validate:"dirpath"`
	Sort  string `query:"sort" json:"sort,omitempty" mod:"trim,lcase" default:"name" validate:"oneof=name size last_modified is_directory"`
	Order string `query:"order" json:"order,omitempty" mod:"trim,lcase" default:"asc" validate:"oneof=asc desc"`
}

// Entry is a listing entry as rendered by the API.
type Entry struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	IsDirectory  bool   `json:"is_directory"`
	IsSymlink    bool   `json:"is_symlink"`
	Size         *int64 `json:"size"`
	SizeDisplay  string `json:"size_display,omitempty"`
	LastModified *int64 `json:"last_modified"`
}

// BrowseResponse contains the response for the browse endpoints.
type BrowseResponse struct {
	Directory  string  `json:"directory"`
	IsRoot     bool    `json:"is_root"`
	ParentPath string  `json:"parent_path,omitempty"`
	Entries    []Entry `json:"entries"`
}
