// Package manifestgen produces publication manifests for a tree of EPUB files
// by invoking a Readium command line tool.
//
// Generator walks the input tree, runs `<tool> manifest` for every .epub file
// and stores the tool's stdout as <name>_<hash>.json in the output directory,
// where hash is the first eight hex digits of the MD5 of the EPUB path. Other
// files are listed in exceptions.txt. A failing conversion is logged and the
// walk continues. The output directory is what the report package consumes.
package manifestgen
