// Package language normalizes the free-form language values found in
// publication metadata.
//
// Manifests carry BCP 47 tags ("nl", "en-GB"), ISO 639-2 codes ("dut"), or
// plain words ("Nederlands"). Normalize reduces all of them to an ISO 639-1
// base code so reports can group publications by language; DisplayName turns
// the code back into a readable name.
package language
