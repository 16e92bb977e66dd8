package main

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/stateful/webnb/pkg/document"
	"github.com/stateful/webnb/pkg/document/editor"
)

type jsError struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Line    int    `json:"line,omitempty"`
}

func newJSError(err error) *jsError {
	e := &jsError{Message: err.Error()}

	var perr *document.ParseError
	if errors.As(err, &perr) {
		e.Kind = document.ErrorKind(perr)
		e.Line = perr.Line
	}
	return e
}

// deserializeJSON decodes notebook source into the JSON form of its cells.
func deserializeJSON(source string) (string, *jsError) {
	notebook, err := editor.Deserialize([]byte(source), editor.Options{})
	if err != nil {
		return "", newJSError(err)
	}

	data, err := json.Marshal(notebook)
	if err != nil {
		return "", newJSError(err)
	}
	return string(data), nil
}

// serializeJSON encodes the JSON form of cells back into notebook source.
func serializeJSON(data string) (string, *jsError) {
	var notebook editor.Notebook
	if err := json.Unmarshal([]byte(data), &notebook); err != nil {
		return "", newJSError(errors.Wrap(err, "invalid notebook JSON"))
	}
	for idx, cell := range notebook.Cells {
		if cell == nil {
			return "", &jsError{Message: "cell " + strconv.Itoa(idx) + " is null"}
		}
	}
	return string(editor.Serialize(&notebook, editor.Options{})), nil
}
