package domain

import "time"

// UploadState is the lifecycle state of a tracked upload.
type UploadState string

const (
	UploadStatePending   UploadState = "pending"
	UploadStateUploading UploadState = "uploading"
	UploadStateCompleted UploadState = "completed"
	UploadStateFailed    UploadState = "failed"
)

// ValidUploadState reports whether a client-supplied state is recognized.
func ValidUploadState(state UploadState) bool {
	switch state {
	case UploadStatePending, UploadStateUploading, UploadStateCompleted, UploadStateFailed:
		return true
	default:
		return false
	}
}

// UploadStatus tracks one upload attempt. Records live only in process
// memory and are lost on restart; clients poll and must tolerate a 404
// after a restart.
type UploadStatus struct {
	UploadID  string      `json:"uploadId"`
	Status    UploadState `json:"status"`
	FileName  string      `json:"fileName"`
	CreatedAt time.Time   `json:"createdAt"`
	Error     string      `json:"error,omitempty"`
}
