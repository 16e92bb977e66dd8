//go:build js && wasm

package main

import (
	"syscall/js"
)

// These are variables so that they can be set during the build time.
var (
	BuildDate    = "unknown"
	BuildVersion = "0.0.0"
	Commit       = "unknown"
)

func main() {
	webnb := map[string]interface{}{
		"deserialize": js.FuncOf(deserialize),
		"serialize":   js.FuncOf(serialize),
		"version":     BuildVersion,
	}
	js.Global().Set("Webnb", js.ValueOf(webnb))

	select {}
}

func deserialize(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return toJSError(&jsError{Message: "deserialize expects the notebook source"})
	}
	result, err := deserializeJSON(args[0].String())
	if err != nil {
		return toJSError(err)
	}
	return result
}

func serialize(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return toJSError(&jsError{Message: "serialize expects the notebook JSON"})
	}
	result, err := serializeJSON(args[0].String())
	if err != nil {
		return toJSError(err)
	}
	return result
}

func toJSError(err *jsError) js.Value {
	jsErr := js.Global().Get("Error").New(err.Message)
	if err.Kind != "" {
		jsErr.Set("kind", err.Kind)
		jsErr.Set("line", err.Line)
	}
	return jsErr
}
