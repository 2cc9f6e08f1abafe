package main

import (
	"fmt"
	"strconv"
	"strings"
)

// splitList 按逗号切分并去掉空白项
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseIntList(raw string) ([]int, error) {
	items := splitList(raw)
	ids := make([]int, 0, len(items))
	for _, item := range items {
		id, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("无效的单品位置 %q", item)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseStyleWeights 解析 "Casual=2,Clásico=1" 形式的风格偏好，省略权重时为 1
func parseStyleWeights(raw string) (map[string]float64, error) {
	items := splitList(raw)
	if len(items) == 0 {
		return nil, nil
	}

	weights := make(map[string]float64, len(items))
	for _, item := range items {
		style, value, found := strings.Cut(item, "=")
		style = strings.TrimSpace(style)
		if style == "" {
			return nil, fmt.Errorf("无效的风格偏好 %q", item)
		}
		weight := 1.0
		if found {
			w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("无效的风格权重 %q", item)
			}
			weight = w
		}
		weights[style] = weight
	}
	return weights, nil
}
