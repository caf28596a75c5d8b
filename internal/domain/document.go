package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentBirthCertificate DocumentType = "Akta Kelahiran"
	DocumentFamilyCard       DocumentType = "Kartu Keluarga"
	DocumentIDCard           DocumentType = "KTP"
	DocumentStudentCard      DocumentType = "Kartu Pelajar"
	DocumentReportCard       DocumentType = "Rapor"
	DocumentDiploma          DocumentType = "Ijazah"
	DocumentOther            DocumentType = "Lainnya"
)

var DocumentTypes = []DocumentType{
	DocumentBirthCertificate,
	DocumentFamilyCard,
	DocumentIDCard,
	DocumentStudentCard,
	DocumentReportCard,
	DocumentDiploma,
	DocumentOther,
}

const MaxDocumentSize = 10 << 20

// DocumentMIMETypes are the content types accepted for player documents.
var DocumentMIMETypes = []string{"image/jpeg", "image/jpg", "image/png", "application/pdf"}

type Document struct {
	ID            uuid.UUID    `json:"id"`
	PlayerID      uuid.UUID    `json:"playerId"`
	DocumentType  DocumentType `json:"documentType"`
	DocumentLabel string       `json:"documentLabel,omitempty"`
	FileName      string       `json:"fileName"`
	FileURL       string       `json:"fileUrl"`
	FileSize      int64        `json:"fileSize"`
	MimeType      string       `json:"mimeType"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Upload is a file received from a client, not yet stored.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}
