// Package manifest loads the JSON publication manifests emitted by Readium's
// `manifest` command and exposes them as a small, forgiving document model.
//
// Manifests come from many producers and are only loosely typed: a field may
// be missing, hold a string where a list is expected, or nest alternatives
// several levels deep. Decoding therefore never fails on a field of the wrong
// type; such fields fall back to their zero value. Only malformed JSON or an
// unreadable file is a load failure, and [Load] reports those to a
// [FailureSink] instead of returning them so one corrupt manifest cannot abort
// a batch.
//
// accessModeSufficient is normalized once at decode time into an ordered list
// of [ModeGroup] values so callers never repeat the string-versus-list
// sniffing.
package manifest
