// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func runGo(args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// runTest 對應:
//
//	go clean -testcache && go test ./... -cover -count=1 | grep -E '^(ok|FAIL)'
//
// detail 時改用 -v，只濾掉 [no test files]。
func runTest(detail bool) error {
	printColor(colorGreen, "running tests")
	if err := runGo("clean", "-testcache"); err != nil {
		return fmt.Errorf("go clean -testcache: %w", err)
	}

	args := []string{"test", "./...", "-count=1"}
	if detail {
		args = append(args, "-v")
	} else {
		args = append(args, "-cover")
	}
	cmd := exec.Command("go", args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	// 2>&1：編譯錯誤在 stderr
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start go test: %w", err)
	}

	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"):
			printColor(colorGreen, line)
		case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"), strings.Contains(line, "setup failed"):
			printColor(colorRed, line)
		case detail:
			fmt.Println(line)
		}
	}
	if err := sc.Err(); err != nil {
		printColor(colorRed, "scanner error: "+err.Error())
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("tests finished with errors: %w", err)
	}
	return nil
}
