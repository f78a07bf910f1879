// Package layout defines the canonical layout-analysis model used by hybridoc
// and the normalizer that produces it.
//
// Layout analysis services report a document as pages of text lines plus a
// document-wide list of tables. Each line and each table carries character
// offset spans into the service's full text stream, and each table lists the
// pages it appears on. The JSON shape of that report differs between API
// flavours: some put pages and tables at the root, the REST flavour nests them
// under "analyzeResult". Normalize accepts both and never fails; input it
// cannot use is reported as an Issue and replaced by empty values.
//
// Other sources (Document AI, hOCR) build a Result directly.
package layout
