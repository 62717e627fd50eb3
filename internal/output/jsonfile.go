package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// JSONDestination appends newline-delimited JSON under
// basePath/folder/topic/year=/month=/day=/data.json, partitioned by each
// message's timestamp.
type JSONDestination struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONDestination(basePath, folder string) *JSONDestination {
	return &JSONDestination{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONDestination) WriteMessage(topic string, msg []byte) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}
	partitionPath, err := partitionFor(event)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(j.basePath, j.folder, topic, partitionPath)
	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONDestination) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// partitionFor derives the year=/month=/day= partition path from the event's
// unix timestamp.
func partitionFor(event map[string]interface{}) (string, error) {
	timestamp, ok := event["timestamp"].(float64)
	if !ok {
		return "", fmt.Errorf("event missing timestamp")
	}
	eventTime := time.Unix(int64(timestamp), 0)
	year, month, day := eventTime.Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day), nil
}
