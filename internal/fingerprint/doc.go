// Package fingerprint renames built assets after their content digest and
// rewrites every textual reference to them across an output tree.
//
// A run alternates two phases until nothing changes:
//
//  1. The Renamer hashes each whitelisted file in the asset directory and
//     renames it to <digest><ext>, producing a Mapping of old→new names.
//  2. The Rewriter walks the whole output tree and substitutes every old
//     name with its new name in each text file.
//
// Asset files may reference each other, so a rewrite can change the bytes
// of an already renamed asset and require another round. The Driver repeats
// the phases until a round renames nothing or rewrites nothing, and gives up
// after MaxIterations rounds.
//
// Substitution is plain substring replacement applied in mapping order. An
// old name that is a substring of unrelated text is replaced too.
package fingerprint
