// Package hocr reads hOCR data, the HTML-based standard format for
// representing OCR results, into the canonical layout model.
//
// This package provides:
//
// - Character set detection and decoding of hOCR files that declare a legacy charset
// - A light object model of pages, lines and words
// - Conversion into layout.Result so hOCR output can be assembled like any other source
//
// Every element with class 'ocr_page' becomes a page, in document order. Every
// line-level element ('ocr_line', 'ocr_header', 'ocr_caption', 'ocr_textfloat')
// becomes a line whose content is its words joined by single spaces. hOCR has
// no notion of tables or text offsets, so the layout carries neither.
//
// Key Types:
//
// - Document: Parsed hOCR document
// - Page: A page with class 'ocr_page'
// - Line: A line-level element and its words
// - BoundingBox: Rectangle from a 'bbox' title property
//
// Main Functions:
//
// - Parse: Parses hOCR data straight into the layout model
// - ParseDocument: Parses hOCR data into the object model
// - ToLayout: Converts the object model into the layout model
package hocr
