// Package ocr checks that rendered captions are legible using Tesseract.
//
// Captions on watch canvases are capped at a small font size. CheckLegibility
// crops the caption band out of a composed image, runs Tesseract over it
// (via gosseract/v2) and reports which of the expected words were read back.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Checker.TessdataPrefix points at a custom tessdata directory when the
// system one is not wanted.
//
// # Recall
//
// WordRecall is the fraction of expected words found in the recognized text.
// Words are compared case-insensitively with punctuation stripped, and each
// recognized word can satisfy only one expected word. A recall of 1.0 means
// every word came back; it does not mean OCR read nothing extra.
package ocr
