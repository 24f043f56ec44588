// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cli

import (
	"fmt"
	"log/slog"
	osexec "os/exec"

	"github.com/shirou/gopsutil/v4/host"
)

var (
	// hostInfoFn is the function used to get host info (injectable for testing).
	hostInfoFn = host.Info
	lookPathFn = osexec.LookPath
)

// ResolveBinary returns the path binary resolves to on PATH.
func ResolveBinary(
	binary string,
) (string, error) {
	path, err := lookPathFn(binary)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", binary, err)
	}

	return path, nil
}

// ValidateHost logs the host platform and warns when binary cannot be
// resolved. Runs still proceed and fail to spawn. It reports whether the
// binary was found.
func ValidateHost(
	logger *slog.Logger,
	binary string,
) bool {
	if info, err := hostInfoFn(); err != nil {
		logger.Debug("host info unavailable", slog.String("error", err.Error()))
	} else {
		logger.Debug(
			"host",
			slog.String("platform", info.Platform),
			slog.String("platform_version", info.PlatformVersion),
			slog.String("arch", info.KernelArch),
		)
	}

	path, err := ResolveBinary(binary)
	if err != nil {
		logger.Warn(
			"cli binary not found, runs will fail to spawn",
			slog.String("binary", binary),
			slog.String("error", err.Error()),
		)
		return false
	}

	logger.Debug("cli binary resolved", slog.String("path", path))

	return true
}
