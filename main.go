package main

import (
	"flag"

	"sonar/ml"
)

func main() {
	modelDir := flag.String("model-dir", "", "where to upload the saved model")
	modelName := flag.String("model-name", "sonar_model", "what to name the saved model file; empty disables saving")
	dataPath := flag.String("data", "sonar.all-data", "path to the sonar CSV, downloaded if missing")
	batchSize := flag.Int("batch-size", 4, "input batch size for training (default: 4)")
	testSplit := flag.Float64("test-split", 0.2, "split size for training / testing dataset")
	epochs := flag.Int("epochs", 10, "number of epochs to train (default: 10)")
	lr := flag.Float64("lr", 0.01, "learning rate (default: 0.01)")
	momentum := flag.Float64("momentum", 0.5, "SGD momentum (default: 0.5)")
	seed := flag.Int64("seed", 42, "random seed (default: 42)")
	flag.Parse()

	ml.Run(ml.RunConfig{
		DataPath:  *dataPath,
		ModelDir:  *modelDir,
		ModelName: *modelName,
		BatchSize: *batchSize,
		TestSplit: *testSplit,
		Epochs:    *epochs,
		LR:        *lr,
		Momentum:  *momentum,
		Seed:      *seed,
	})
}
