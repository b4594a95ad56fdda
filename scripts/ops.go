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

// go run ./scripts [test|test-detail|golden|verify]
package main

import (
	"fmt"
	"os"
)

const (
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

func printColor(color, msg string) { fmt.Printf("%s%s%s\n", color, msg, colorReset) }

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts [test|test-detail|golden|verify]")
		os.Exit(1)
	}
	if err := selectTask(os.Args[1]); err != nil {
		printColor(colorRed, err.Error())
		os.Exit(1)
	}
}

func selectTask(task string) error {
	switch task {
	case "test":
		return runTest(false)
	case "test-detail":
		return runTest(true)
	case "golden":
		// 重新產生 golden/testdata；檔案內容應與 git 中的一致
		return runGo("run", "./cmd/golden", "-out", "golden/testdata", "-pb=false")
	case "verify":
		return runGo("run", "./cmd/golden", "-verify", "golden/testdata")
	default:
		printColor(colorYellow, "Unknown task: "+task)
		return fmt.Errorf("unknown task %q", task)
	}
}
