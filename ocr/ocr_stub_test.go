//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	client, err := New()
	if err == nil {
		t.Error("Expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	err := client.Close()
	if err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}

func TestStubOperations(t *testing.T) {
	var client *Client
	if _, err := client.RecognizeImage(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage error = %v", err)
	}
	if err := client.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage error = %v", err)
	}
	if err := client.SetPageSegMode(PSMAuto); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetPageSegMode error = %v", err)
	}
	if _, err := client.RecognizeBlock(nil, nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeBlock error = %v", err)
	}
	if c, err := NewWithConfig(DefaultClientConfig()); c != nil || !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("NewWithConfig() = %v, %v", c, err)
	}
}
