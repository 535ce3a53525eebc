package lock

// Record is the serializable state of one package. Hooks never appear
// here: they are stripped when the registry snapshots itself. Status is
// stored as its numeric code.
type Record struct {
	URL    string `json:"url"`
	Branch string `json:"branch,omitempty"`
	Dir    string `json:"dir"`
	Status int    `json:"status"`
	Hash   string `json:"hash,omitempty"`
	Pin    bool   `json:"pin,omitempty"`
}

// Snapshot is the full lock document: one record per package name.
type Snapshot map[string]Record
