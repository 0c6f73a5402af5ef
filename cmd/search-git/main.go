// --- START OF FINAL REVISED FILE cmd/search-git/main.go ---
package main

import "os"

// main is the entry point for the search-git application. Build-time
// variables 'version', 'commit', and 'date' are declared in root.go.
func main() {
	os.Exit(Execute())
}

// --- END OF FINAL REVISED FILE cmd/search-git/main.go ---
