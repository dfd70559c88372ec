// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package session

import "fmt"

// LoadBootstrapUsers logs in the twenty canned demo users (user01@test.com/pass01 through
// user20@test.com/pass20) this system has always shipped with, returning their tokens in
// insertion order. It exists purely to preserve the original system's boot-time data
// ingestion step for demos and local development; production deployments have no reason
// to call it.
func (s *Store) LoadBootstrapUsers() []string {
	tokens := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		email := fmt.Sprintf("user%02d@test.com", i)
		password := fmt.Sprintf("pass%02d", i)
		tokens = append(tokens, s.Login(email, password))
	}
	return tokens
}
