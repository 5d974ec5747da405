// Package scaffold creates test configuration files from skeletons.
package scaffold

import (
	"io"
	"os"
	"path/filepath"

	"github.com/openscad-ofl/ofltools/pkg/errors"
)

// DefaultTemplate is used when no template is given.
const DefaultTemplate = "3d"

// Plan names the skeleton to copy and the file to create.
type Plan struct {
	Name     string
	Template string
	Source   string // <tests>/skeleton-<template>.conf
	Target   string // <tests>/<dir of name>/<base of name>-test.conf
}

// NewPlan validates name and template and derives the file paths below
// testsDir.
func NewPlan(testsDir, name, template string) (*Plan, error) {
	if template == "" {
		template = DefaultTemplate
	}
	if err := errors.ValidateTestName(name); err != nil {
		return nil, err
	}
	if err := errors.ValidateTemplate(template); err != nil {
		return nil, err
	}

	dir := filepath.Dir(filepath.Join(testsDir, name))
	return &Plan{
		Name:     name,
		Template: template,
		Source:   filepath.Join(testsDir, "skeleton-"+template+".conf"),
		Target:   filepath.Join(dir, filepath.Base(name)+"-test.conf"),
	}, nil
}

// TargetExists reports whether the target file is already present.
func (p *Plan) TargetExists() bool {
	_, err := os.Stat(p.Target)
	return err == nil
}

// Apply copies the skeleton over the target, creating its directory.
func (p *Plan) Apply() error {
	src, err := os.Open(p.Source)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "skeleton %s", p.Source)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open skeleton %s", p.Source)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(p.Target), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(p.Target))
	}
	dst, err := os.Create(p.Target)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", p.Target)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "copy %s", p.Source)
	}
	return dst.Close()
}
