package api

import (
	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/snapshot"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HeaderInfo describes the preamble of a decoded container
type HeaderInfo struct {
	Tag       uint32 `json:"tag"`
	Signature string `json:"signature"`
	Trailer   uint32 `json:"trailer"`
	Standard  bool   `json:"standard"`
}

// DecodeResponse is returned by POST /api/v1/decode
type DecodeResponse struct {
	Header      *HeaderInfo         `json:"header"`
	Entries     []interchange.Entry `json:"entries"`
	Diagnostics codec.Diagnostics   `json:"diagnostics"`
}

// SnapshotResponse is returned by GET /api/v1/snapshots/{ref}
type SnapshotResponse struct {
	Meta    snapshot.Meta       `json:"meta"`
	Entries []interchange.Entry `json:"entries"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port         int
	Bind         string
	APIKey       string // empty disables authentication
	MaxBodyBytes int64
}

// SnapshotReader is the read side of the snapshot archive
type SnapshotReader interface {
	List() ([]snapshot.Meta, error)
	Get(ref string) (snapshot.Meta, []interchange.Entry, error)
}
