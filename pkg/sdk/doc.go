// Package workermatch embeds the worker recommendation engine in a Go
// program, backed by Redis or Valkey for the model cache and Postgres for
// worker profiles and search logs.
//
//	client, _ := workermatch.New(ctx,
//	    workermatch.WithRedis("localhost:6379", ""),
//	    workermatch.WithPostgres("postgres://app@localhost/workers"),
//	)
//	defer client.Close()
//
//	_, _ = client.Train(ctx, false)
//	res, _ := client.Recommend(ctx, workermatch.Query{
//	    Text:     "fuga en el lavabo",
//	    Strategy: workermatch.StrategyHybrid,
//	    Near:     &workermatch.Point{Lat: 19.42, Lng: -99.16},
//	})
//	_, _ = client.RecordClick(ctx, res.LogID, res.Workers[0].ID, 1)
package workermatch
