package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/ovchar/food_ordering/internal/models"
)

// Search runs a fuzzy match over the dish index and returns the total hit
// count plus the page of dishes.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Dish, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 }          `json:"total"`
			Hits  []struct{ Source models.Dish } `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	dishes := make([]models.Dish, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		dishes[i] = hit.Source
	}
	return r.Hits.Total.Value, dishes, nil
}

// IndexDish upserts the dish document, keyed by its id.
func IndexDish(ctx context.Context, es *elasticsearch.Client, index string, dish *models.Dish) error {
	data, err := json.Marshal(dish)
	if err != nil {
		return fmt.Errorf("index dish: marshal: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(dish.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index dish: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index dish: %s", res.Status())
	}
	return nil
}

// DeleteDish removes the dish document; a missing document is not an error.
func DeleteDish(ctx context.Context, es *elasticsearch.Client, index string, id uint) error {
	res, err := es.Delete(
		index,
		strconv.FormatUint(uint64(id), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete dish: %s", res.Status())
	}
	return nil
}
