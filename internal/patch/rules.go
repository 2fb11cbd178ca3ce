package patch

import (
	"fmt"

	"github.com/cppkgs/concpp/recipe"
)

const depFindProtobuf = "cdk/cmake/DepFindProtobuf.cmake"

// codegenName returns the schema-compiler library name the patched source
// must reference: the debug-suffixed name when the build-tool protobuf is
// itself a Debug build. A mismatch here only surfaces as a link failure
// much later, so the substitutions below are strict.
func codegenName(in Input) string {
	if in.Codegen.BuildType == recipe.Debug {
		return "protobufd"
	}
	return "protobuf"
}

// Rules returns the patch catalogue for the given input, in application
// order. The protobuf-lite removal must precede the library rename: its
// find-text contains the rename's find-text as a prefix.
func Rules(in Input) []Rule {
	protobuf := codegenName(in)

	return []Rule{
		// Static MSVC builds: the upstream layout derives the -mt name
		// from the shared library name. Tolerant, the line is already
		// fixed in some upstream versions.
		{
			File:    "install_layout.cmake",
			Find:    `set(LIB_NAME_STATIC "${LIB_NAME}-mt")`,
			Replace: `set(LIB_NAME_STATIC "${LIB_NAME_STATIC}-mt")`,
			When: func(in Input) bool {
				return !in.Options.Shared && in.Facts.Compiler.IsMSVC()
			},
		},
		// Cross-compiled Apple builds must not default to the host
		// architecture. Injects after the project anchor.
		{
			File: "CMakeLists.txt",
			Find: "PROJECT(MySQL_CONCPP)",
			Replace: fmt.Sprintf("PROJECT(MySQL_CONCPP)\nset(CMAKE_OSX_ARCHITECTURES %q CACHE INTERNAL \"\" FORCE)\n",
				in.Facts.Arch),
			When: func(in Input) bool {
				return in.Facts.OS.Apple() && in.Facts.CrossCompiling
			},
		},
		// Drop protobuf-lite so the source links the resolved protobuf
		// targets instead.
		{
			File:    depFindProtobuf,
			Find:    "LIBRARY protobuf-lite pb_libprotobuf-lite",
			Replace: "",
			Strict:  true,
		},
		// Point the remaining lookup at the resolved build variant.
		{
			File:    depFindProtobuf,
			Find:    "LIBRARY protobuf",
			Replace: "LIBRARY " + protobuf,
			Strict:  true,
		},
		{
			File:    "cdk/protocol/mysqlx/CMakeLists.txt",
			Find:    "ext::protobuf-lite",
			Replace: "ext::" + protobuf,
			Strict:  true,
		},
		{
			File:    "cdk/core/CMakeLists.txt",
			Find:    "ext::protobuf-lite",
			Replace: "ext::" + protobuf,
			Strict:  true,
		},
	}
}
