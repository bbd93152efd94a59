package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootDefaultsToServe(t *testing.T) {
	root := newRootCmd()
	assert.NotNil(t, root.RunE)
	assert.NotNil(t, root.Flags().Lookup("migrate"))
	assert.NotNil(t, root.Flags().Lookup("migrate-only"))

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
}

func TestValidateExitStatus(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", `
title: Firewall Basics
description: Stateful filtering with nftables
difficulty: beginner
category: security
`)
	bad := writeFile(t, dir, "bad.json", `{"title":"x","difficulty":"legendary"}`)

	out, err := runCLI(t, "validate", "--kind", "learningPath", good)
	require.NoError(t, err, out)
	var reports []validateReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Valid)

	out, err = runCLI(t, "validate", "--kind", "learningPath", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed validation")
	reports = nil
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.False(t, reports[1].Valid)
	assert.True(t, reports[1].Errors.Has("difficulty", "enum"), "%v", reports[1].Errors)

	_, err = runCLI(t, "validate", "--kind", "learningPath", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = runCLI(t, "validate", "--kind", "spaceship", good)
	assert.Error(t, err)
}

func TestKindsCommand(t *testing.T) {
	out, err := runCLI(t, "kinds")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "learningPath")
}

func TestTokenCommand(t *testing.T) {
	dir := t.TempDir()
	secret := "cli-test-secret-with-enough-length-000"
	writeFile(t, dir, "config.yaml", `
jwt:
  secret: `+secret+`
  expire_hours: 1
storage:
  type: local
  local_path: `+filepath.Join(dir, "uploads")+`
`)

	out, err := runCLI(t, "token", "--config", dir, "--sub", "instructor-7", "--role", "instructor")
	require.NoError(t, err, out)
	claims, err := util.ParseJWT(strings.TrimSpace(out), secret)
	require.NoError(t, err)
	assert.Equal(t, "instructor-7", claims.UserID())
	assert.Equal(t, model.RoleInstructor, claims.Role)

	_, err = runCLI(t, "token", "--config", dir, "--sub", "x", "--role", "janitor")
	assert.Error(t, err)
}
