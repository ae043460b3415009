package types

// Metadata describes the build the running binary was produced from.
type Metadata struct {
	// Version of this application.
	Version string `json:"version" example:"0.3.0"`
	// Human readable description of the purpose of this application.
	Description string `json:"description" example:"Pett health and metadata server"`
	// Revision the binary was built from, as resolved by git describe.
	LastCommitSHA string `json:"last_commit_sha" example:"v0.3.0-2-g1a2b3c4"`
}
