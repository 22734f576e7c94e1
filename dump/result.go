package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"thermal/model"
)

// 计算结果写入 json 文件
func WriteJSON(path string, res *model.SimulationResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = Encode(file, res); err != nil {
		file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":      path,
		"snapshots": len(res.StepData),
		"sweeps":    res.Sweeps,
	}).Info("计算结果已保存")
	return nil
}

func Encode(w io.Writer, res *model.SimulationResult) error {
	return json.NewEncoder(w).Encode(res)
}

func ReadJSON(path string) (*model.SimulationResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var res model.SimulationResult
	if err = json.NewDecoder(file).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &res, nil
}
