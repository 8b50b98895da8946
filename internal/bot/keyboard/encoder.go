package keyboard

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CallbackDataSeparator = ":"
	// CallbackDataLimitBytes is Telegram's limit on callback_data.
	CallbackDataLimitBytes = 64
)

var errCallbackTooLong = errors.New("callback data too long")

// EncodeCallback joins unique and data as "unique:data", or returns unique alone when data is empty.
func EncodeCallback(unique, data string) (string, error) {
	if data == "" {
		if len(unique) > CallbackDataLimitBytes {
			return "", fmt.Errorf("%w: %d bytes exceeds %d", errCallbackTooLong, len(unique), CallbackDataLimitBytes)
		}
		return unique, nil
	}

	payload := unique + CallbackDataSeparator + data
	if len(payload) > CallbackDataLimitBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", errCallbackTooLong, len(payload), CallbackDataLimitBytes)
	}

	return payload, nil
}

// DecodeCallback splits callback data at the first separator.
func DecodeCallback(callbackData string) (unique, data string, err error) {
	if callbackData == "" {
		return "", "", errors.New("callback data is empty")
	}

	idx := strings.Index(callbackData, CallbackDataSeparator)
	if idx == -1 {
		return callbackData, "", nil
	}

	return callbackData[:idx], callbackData[idx+len(CallbackDataSeparator):], nil
}
