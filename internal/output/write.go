package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
)

// WriteJSON serializes v as indented JSON to outputPath. If outputPath is
// "-", it writes to stdout.
func WriteJSON(v any, outputPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return write(append(data, '\n'), outputPath)
}

// WriteXML serializes a projected BOM as indented XML to outputPath.
// If outputPath is "-", it writes to stdout.
func WriteXML(bom *XMLBOM, outputPath string) error {
	data, err := xml.MarshalIndent(bom, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal XML: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	return write(append(data, '\n'), outputPath)
}

func write(data []byte, outputPath string) error {
	if outputPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}
