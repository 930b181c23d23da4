//go:build headless

package main

import "errors"

func readClipboardExpression() (string, error) {
	return "", errors.New("clipboard unavailable in headless mode")
}

func writeClipboardExpression(descriptor string) error {
	return errors.New("clipboard unavailable in headless mode")
}
