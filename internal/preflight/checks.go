package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/tvdtogt/a11yExtractor/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckBinary verifies that command resolves on PATH to an executable file.
func CheckBinary(name, command string, optional bool) Result {
	command = strings.TrimSpace(command)
	result := Result{Name: name, Optional: optional}
	if command == "" {
		result.Detail = "command not configured"
		return result
	}
	resolved, err := exec.LookPath(command)
	if err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", command)
		return result
	}
	if err := unix.Access(resolved, unix.X_OK); err != nil {
		result.Detail = fmt.Sprintf("%s (error: not executable: %v)", resolved, err)
		return result
	}
	result.Passed = true
	result.Detail = resolved
	return result
}

// CheckTools evaluates both manifest generators. The configured default tool
// is required; the other one is optional.
func CheckTools(cfg *config.Config) []Result {
	return []Result{
		CheckBinary("Readium CLI (readium)", cfg.Tools.ReadiumPath, cfg.Tools.Default != config.ToolReadium),
		CheckBinary("Readium Go toolkit (rwp)", cfg.Tools.RWPPath, cfg.Tools.Default != config.ToolRWP),
	}
}
