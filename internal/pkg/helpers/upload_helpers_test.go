package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStoragePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "safe characters pass through", in: "course-v1/student-uploads/file.txt", want: "course-v1/student-uploads/file.txt"},
		{name: "colons replaced", in: "course-v1:Demo+2026", want: "course-v1_Demo_2026"},
		{name: "spaces replaced", in: "Essay One.txt", want: "Essay_One.txt"},
		{name: "unicode replaced", in: "ödev 1", want: "_dev_1"},
		{name: "s3 safe set kept", in: "a!b-c_d.e*f'g(h)i", want: "a!b-c_d.e*f'g(h)i"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeStoragePath(tt.in))
		})
	}
}

func TestStudentUploadPath(t *testing.T) {
	got := StudentUploadPath("course-v1:Demo+2026", "block-v1:Demo+sga1", "student_ann", "Essay 1", "draft.PDF")
	assert.Equal(t, "course-v1_Demo_2026/student-uploads/block-v1_Demo_sga1/student_ann-Essay_1.PDF", got)
}

func TestGraderUploadPath(t *testing.T) {
	got := GraderUploadPath("course-v1:Demo+2026", "block-v1:Demo+sga1", "student_ann", "Essay 1", "annotated.pdf")
	assert.Equal(t, "course-v1_Demo_2026/grader-uploads/block-v1_Demo_sga1/student_ann-Essay_1.pdf", got)
}

func TestUploadPathNoExtension(t *testing.T) {
	got := StudentUploadPath("c", "a", "ann", "Essay", "README")
	assert.Equal(t, "c/student-uploads/a/ann-Essay", got)
}
