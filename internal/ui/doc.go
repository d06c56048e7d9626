// Package ui provides semantic text formatting for filestore's CLI output.
//
// Formatters colorize content when the terminal supports it and fall back
// to plain text decorations when NO_COLOR is set or color is unavailable:
//
//	ui.Code.Sprint("filestore storage encrypt-pw")  // `backticks` without color
//	ui.Path.Sprint("/var/lib/app/pw.txt")           // no decoration
//	ui.Highlight.Sprint("2048")                     // 'quotes' without color
//
// Status lines combine an indicator with a message:
//
//	fmt.Println(ui.Done("Secret encrypted"))  // ✓ Secret encrypted
//	fmt.Println(ui.Fail("Keys not found"))    // ✗ Keys not found
//	fmt.Println(ui.Hint("Run generate-keys")) // → Run generate-keys
package ui
