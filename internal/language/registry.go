// Package language maps Judge0 CE language labels to engine language IDs.
package language

import "sort"

// Entry is a single (engine ID, label) pair.
type Entry struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

var entries = []Entry{
	{45, "Assembly (NASM 2.14.02)"},
	{46, "Bash (5.0.0)"},
	{47, "Basic (FBC 1.07.1)"},
	{75, "C (Clang 7.0.1)"},
	{76, "C++ (Clang 7.0.1)"},
	{48, "C (GCC 7.4.0)"},
	{52, "C++ (GCC 7.4.0)"},
	{49, "C (GCC 8.3.0)"},
	{53, "C++ (GCC 8.3.0)"},
	{50, "C (GCC 9.2.0)"},
	{54, "C++ (GCC 9.2.0)"},
	{86, "Clojure (1.10.1)"},
	{51, "C# (Mono 6.6.0.161)"},
	{77, "COBOL (GnuCOBOL 2.2)"},
	{55, "Common Lisp (SBCL 2.0.0)"},
	{90, "Dart (2.19.2)"},
	{56, "D (DMD 2.089.1)"},
	{57, "Elixir (1.9.4)"},
	{58, "Erlang (OTP 22.2)"},
	{44, "Executable"},
	{87, "F# (.NET Core SDK 3.1.202)"},
	{59, "Fortran (GFortran 9.2.0)"},
	{60, "Go (1.13.5)"},
	{95, "Go (1.18.5)"},
	{88, "Groovy (3.0.3)"},
	{61, "Haskell (GHC 8.8.1)"},
	{91, "Java (JDK 17.0.6)"},
	{62, "Java (OpenJDK 13.0.1)"},
	{63, "JavaScript (Node.js 12.14.0)"},
	{93, "JavaScript (Node.js 18.15.0)"},
	{78, "Kotlin (1.3.70)"},
	{64, "Lua (5.3.5)"},
	{89, "Multi-file program"},
	{79, "Objective-C (Clang 7.0.1)"},
	{65, "OCaml (4.09.0)"},
	{66, "Octave (5.1.0)"},
	{67, "Pascal (FPC 3.0.4)"},
	{85, "Perl (5.28.1)"},
	{68, "PHP (7.4.1)"},
	{43, "Plain Text"},
	{69, "Prolog (GNU Prolog 1.4.5)"},
	{70, "Python (2.7.17)"},
	{92, "Python (3.11.2)"},
	{71, "Python (3.8.1)"},
	{80, "R (4.0.0)"},
	{72, "Ruby (2.7.0)"},
	{73, "Rust (1.40.0)"},
	{81, "Scala (2.13.2)"},
	{82, "SQL (SQLite 3.27.2)"},
	{83, "Swift (5.2.3)"},
	{74, "TypeScript (3.7.4)"},
	{94, "TypeScript (5.0.3)"},
	{84, "Visual Basic.Net (vbnc 0.0.0.5943)"},
}

// byLabel is written once here and only read afterwards.
var byLabel = func() map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.Label] = e.ID
	}
	return m
}()

// Resolve returns the engine language ID for an exact, case-sensitive label.
// The boolean is false when the label is not registered.
func Resolve(label string) (int, bool) {
	id, ok := byLabel[label]
	return id, ok
}

// Entries returns a copy of the registry sorted by label.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
