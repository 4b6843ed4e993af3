package upload

import (
	"math"
	"strconv"

	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/spreadsheet"
)

// State of the upload surface:
// idle → file_selected → validating → validated → uploading → idle.
type State string

const (
	StateIdle         State = "idle"
	StateFileSelected State = "file_selected"
	StateValidating   State = "validating"
	StateValidated    State = "validated"
	StateUploading    State = "uploading"
)

type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	SizeText string `json:"size_text"`
}

// Validation is the backend verdict, with the lines shown under the file.
type Validation struct {
	Valid          bool     `json:"valid"`
	Message        string   `json:"message"`
	DataRows       int      `json:"data_rows"`
	TotalColumns   int      `json:"total_columns"`
	MissingColumns []string `json:"missing_columns"`
	ColumnsFound   []string `json:"columns_found"`
	Details        []string `json:"details"`
}

type Progress struct {
	Percent int    `json:"percent"`
	Text    string `json:"text"`
}

// Status is the upload surface as rendered to the client.
type Status struct {
	State      State               `json:"state"`
	Generation uint64              `json:"generation"`
	File       *FileInfo           `json:"file,omitempty"`
	Validation *Validation         `json:"validation,omitempty"`
	Inspection *spreadsheet.Report `json:"inspection,omitempty"`
	CanSubmit  bool                `json:"can_submit"`
	InFlight   bool                `json:"in_flight"`
	Progress   *Progress           `json:"progress,omitempty"`
	Message    string              `json:"message,omitempty"`
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders bytes as e.g. "1.5 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
