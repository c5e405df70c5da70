package ports

// Watcher reports changes to Rust sources below a project directory. The
// adapter filters out build output and editor noise before invoking onChange.
// Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring projectPath recursively. onChange is called
	// with the absolute path of each changed .rs file, possibly from another
	// goroutine. Returns an error if the directory cannot be watched.
	Watch(projectPath string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
