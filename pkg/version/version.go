// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

const Version = "0.1.0"

// RequireConstraint checks the running engine version against a
// user-supplied constraint string such as ">= 0.1.0".
func RequireConstraint(constraintStr string) error {
	constraints, err := goversion.NewConstraint(constraintStr)
	if err != nil {
		return fmt.Errorf("Malformed version constraint '%s': %s", constraintStr, err)
	}

	current, err := goversion.NewVersion(Version)
	if err != nil {
		panic(fmt.Sprintf("engine version %q failed to parse: %s", Version, err))
	}

	if !constraints.Check(current) {
		return fmt.Errorf("Fluid version %s does not satisfy constraint '%s'", Version, constraintStr)
	}
	return nil
}
