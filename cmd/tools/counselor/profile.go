package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
)

// loadProfile reads a YAML profile from file, or returns fallback() when file is empty.
func loadProfile(file string, fallback func() learner.Profile) (learner.Profile, error) {
	if file == "" {
		return fallback(), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return learner.Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var profile learner.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return learner.Profile{}, fmt.Errorf("parse profile %s: %w", file, err)
	}
	if err := profile.Validate(); err != nil {
		return learner.Profile{}, err
	}
	return profile, nil
}
