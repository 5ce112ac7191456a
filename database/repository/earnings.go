package repository

import (
	"context"
	"sort"

	"tutorly/models"
)

func (r *DefaultStateRepo) Transactions(ctx context.Context) []models.Transaction {
	var txs []models.Transaction
	r.loadJSON(ctx, KeyTransactions, &txs)
	return txs
}

func (r *DefaultStateRepo) ProcessedKeys(ctx context.Context) map[string]struct{} {
	var list []string
	r.loadJSON(ctx, KeyProcessedKeys, &list)
	keys := make(map[string]struct{}, len(list))
	for _, k := range list {
		keys[k] = struct{}{}
	}
	return keys
}

func (r *DefaultStateRepo) SaveEarnings(ctx context.Context, txs []models.Transaction, keys map[string]struct{}) error {
	if err := r.saveJSON(ctx, KeyTransactions, txs); err != nil {
		return err
	}
	list := make([]string, 0, len(keys))
	for k := range keys {
		list = append(list, k)
	}
	sort.Strings(list)
	return r.saveJSON(ctx, KeyProcessedKeys, list)
}
