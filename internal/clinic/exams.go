package clinic

import (
	"context"
	"fmt"
	"strings"

	"clinicore/internal/blob"
	"clinicore/pkg/domain"
)

// DefaultExamType is assigned when a new imaging exam carries no type.
const DefaultExamType = "ultrasound_abd"

// CreateExam stores a new imaging exam, defaulting type, date and status.
func (s *Service) CreateExam(ctx context.Context, e domain.Exam) (domain.Exam, error) {
	start := s.now()
	var err error
	defer func() { s.observe("create_exam", start, err) }()

	e.ID = s.newID()
	if e.ExamType == "" {
		e.ExamType = DefaultExamType
	}
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	if e.Status == "" {
		e.Status = domain.StatusDraft
	}
	var out domain.Exam
	out, err = insertTyped(s, ctx, domain.CollectionExams, e)
	return out, err
}

// GetExam returns an imaging exam by id; ok is false when absent.
func (s *Service) GetExam(id string) (domain.Exam, bool, error) {
	return getTyped[domain.Exam](s, domain.CollectionExams, id)
}

// ListExams returns imaging exams, newest first. An empty patientID lists
// every exam.
func (s *Service) ListExams(patientID string) ([]domain.Exam, error) {
	sel := domain.Selector{}
	if patientID != "" {
		sel["patient_id"] = domain.Condition{Eq: patientID}
	}
	return listTyped[domain.Exam](s, domain.CollectionExams, sel, domain.FindOptions{SortField: "date", SortDesc: true})
}

// UpdateExam applies a shallow partial update. Nested payloads such as
// organs_data are replaced wholesale.
func (s *Service) UpdateExam(ctx context.Context, id string, fields domain.Document) (domain.Exam, error) {
	start := s.now()
	var err error
	defer func() { s.observe("update_exam", start, err) }()
	var out domain.Exam
	out, err = patchTyped[domain.Exam](s, ctx, domain.CollectionExams, id, fields)
	return out, err
}

// DeleteExam removes an imaging exam and its archived image originals.
func (s *Service) DeleteExam(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_exam", start, err) }()

	if doc, ok := s.store.Get(domain.CollectionExams, id); ok {
		s.dropArchivedImages(ctx, doc)
	}
	err = s.removeDoc(ctx, domain.CollectionExams, id)
	return err
}

// ImageInput is the payload for attaching an image to an exam. Data is the
// encoded image blob exactly as the capture layer hands it over.
type ImageInput struct {
	Filename string
	Data     string
	MimeType string
	Tags     []string
}

// SaveImage appends an image to an exam. The untouched payload is kept as
// original_data and, when a blob store is configured, archived under
// exams/<exam_id>/<image_id>. Archival failures log a warning and do not
// fail the save.
func (s *Service) SaveImage(ctx context.Context, examID string, in ImageInput) (domain.ExamImage, error) {
	start := s.now()
	var err error
	defer func() { s.observe("save_image", start, err) }()

	var exam domain.Exam
	var ok bool
	exam, ok, err = getTyped[domain.Exam](s, domain.CollectionExams, examID)
	if err != nil {
		return domain.ExamImage{}, err
	}
	if !ok {
		err = domain.NotFoundError{Collection: domain.CollectionExams, ID: examID}
		return domain.ExamImage{}, err
	}

	img := domain.ExamImage{
		ID:           s.newID(),
		Filename:     in.Filename,
		Data:         in.Data,
		OriginalData: in.Data,
		MimeType:     in.MimeType,
		Tags:         in.Tags,
	}
	if s.blobs != nil {
		key := imageBlobKey(examID, img.ID)
		if _, perr := s.blobs.Put(ctx, key, strings.NewReader(in.Data), blob.PutOptions{ContentType: in.MimeType}); perr != nil {
			s.log.Warn().Str("key", key).Err(perr).Msg("image archival failed")
		} else {
			img.BlobKey = key
		}
	}

	images := append(exam.Images, img)
	if err = s.patchImages(ctx, examID, images); err != nil {
		return domain.ExamImage{}, err
	}
	return img, nil
}

// DeleteImage removes one image from an exam and deletes its archived
// original, best effort. An unknown image id leaves the exam untouched.
func (s *Service) DeleteImage(ctx context.Context, examID, imageID string) error {
	start := s.now()
	var err error
	defer func() { s.observe("delete_image", start, err) }()

	var exam domain.Exam
	var ok bool
	exam, ok, err = getTyped[domain.Exam](s, domain.CollectionExams, examID)
	if err != nil {
		return err
	}
	if !ok {
		err = domain.NotFoundError{Collection: domain.CollectionExams, ID: examID}
		return err
	}

	images := make([]domain.ExamImage, 0, len(exam.Images))
	removed := false
	for _, img := range exam.Images {
		if img.ID == imageID {
			s.dropBlob(ctx, img.BlobKey)
			removed = true
			continue
		}
		images = append(images, img)
	}
	if !removed {
		// Unknown image id: leave the exam untouched.
		return nil
	}
	err = s.patchImages(ctx, examID, images)
	return err
}

func (s *Service) patchImages(ctx context.Context, examID string, images []domain.ExamImage) error {
	encoded, err := domain.EncodeDocument(struct {
		Images []domain.ExamImage `json:"images"`
	}{Images: images})
	if err != nil {
		return err
	}
	value := encoded["images"]
	if value == nil {
		value = []any{}
	}
	_, err = s.store.Patch(ctx, domain.CollectionExams, examID, domain.Document{"images": value})
	return err
}

func imageBlobKey(examID, imageID string) string {
	return fmt.Sprintf("exams/%s/%s", examID, imageID)
}

// dropArchivedImages deletes every archived blob referenced by an exam
// document. Failures are logged and ignored.
func (s *Service) dropArchivedImages(ctx context.Context, examDoc domain.Document) {
	if s.blobs == nil {
		return
	}
	images, _ := examDoc["images"].([]any)
	for _, raw := range images {
		img, _ := raw.(domain.Document)
		if img == nil {
			continue
		}
		s.dropBlob(ctx, domain.DocumentString(img, "blob_key"))
	}
}

func (s *Service) dropBlob(ctx context.Context, key string) {
	if s.blobs == nil || key == "" {
		return
	}
	if _, err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("archived image delete failed")
	}
}
