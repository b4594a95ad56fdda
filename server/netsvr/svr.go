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

package netsvr

import (
	"net/http"

	"github.com/zintix-labs/goldenrng/server/app"
)

// NetSvr = 路由 + 服務啟停，只交給最外層組裝；同時是 app.Component。
type NetSvr interface {
	NetRouter
	app.Component
	http.Handler
}

// NetRouter 只有路由行為，handler 與子模組拿不到 Run/Shutdown。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)

	// Group 掛載子路由，路徑參數以 {name} 表示，handler 內用 Param 取值。
	Group(path string, fn func(NetRouter))
}
