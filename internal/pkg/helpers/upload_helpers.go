package helpers

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// invalidStorageChars matches any character that is not safe in an object
// storage key. Everything outside the S3 "safe" set (plus the path
// separator) gets replaced.
var invalidStorageChars = regexp.MustCompile(`[^A-Za-z0-9!\-_.*'()/]`)

// SanitizeStoragePath replaces characters that are unsafe in storage keys with "_".
func SanitizeStoragePath(path string) string {
	return invalidStorageChars.ReplaceAllString(path, "_")
}

// StudentUploadPath returns the destination path for a student submission document.
// Layout: {course}/student-uploads/{assignment}/{username}-{assignment name}{ext}
func StudentUploadPath(courseEdxID, assignmentEdxID, username, assignmentName, filename string) string {
	return uploadPath(courseEdxID, "student-uploads", assignmentEdxID, username, assignmentName, filename)
}

// GraderUploadPath returns the destination path for a grader's annotated document.
// Layout: {course}/grader-uploads/{assignment}/{username}-{assignment name}{ext}
func GraderUploadPath(courseEdxID, assignmentEdxID, username, assignmentName, filename string) string {
	return uploadPath(courseEdxID, "grader-uploads", assignmentEdxID, username, assignmentName, filename)
}

func uploadPath(courseEdxID, kind, assignmentEdxID, username, assignmentName, filename string) string {
	path := fmt.Sprintf("%s/%s/%s/%s-%s%s",
		courseEdxID,
		kind,
		assignmentEdxID,
		username,
		assignmentName,
		filepath.Ext(filename),
	)
	return SanitizeStoragePath(path)
}
