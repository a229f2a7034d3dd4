// Package paths provides standardized virtual filesystem paths.
//
// # Directory Structure
//
//	/
//	  ├── home/              (one directory per logged-in user)
//	  │   └── <user>/welcome.txt
//	  ├── system/
//	  │   ├── readme.txt
//	  │   ├── motd.txt
//	  │   └── profiles/      (persisted point totals, one file per user)
//	  └── games/
//	      └── instructions.txt
//
// # Usage
//
//	import "github.com/GriffinCanCode/MiniOS/internal/shared/paths"
//
//	p := paths.Resolve(paths.HomeDir("guest"), "notes.txt") // /home/guest/notes.txt
//	name, ok := paths.ChildName("/home", "/home/guest")     // "guest", true
package paths
