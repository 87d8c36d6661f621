package ml

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	torch "github.com/wangkuiyi/gotorch"

	"sonar/data"
)

// syntheticLoaders builds train/eval loaders over random sonar-shaped rows
// with alternating targets, split 80/20.
func syntheticLoaders(rng *rand.Rand, n, batchSize int) (*data.Loader, *data.Loader) {
	features := make([][]float32, n)
	targets := make([]float32, n)
	for i := range features {
		row := make([]float32, featureDim)
		for j := range row {
			row[j] = rng.Float32()
		}
		features[i] = row
		targets[i] = float32(i % 2)
	}
	set := data.NewSet(features, targets)
	indices := rng.Perm(n)
	testSize := n / 5
	return data.NewLoader(set, indices[testSize:], batchSize, rng),
		data.NewLoader(set, indices[:testSize], batchSize, nil)
}

func TestTrainThenTestOneEpoch(t *testing.T) {
	defer torch.FinishGC()
	device := torch.NewDevice("cpu")
	rng := rand.New(rand.NewSource(42))
	trainLoader, testLoader := syntheticLoaders(rng, 40, 4)

	net := MakeSonarDNN(device)
	opt := torch.SGD(0.01, 0.5, 0, 0, false)
	opt.AddParameters(net.Parameters())

	Train(net, device, trainLoader, opt, 1)
	Test(net, device, testLoader, 1)
}

// sonarCSVFixture writes n rows of 60 feature columns with alternating R/M
// labels into dir and returns the file path.
func sonarCSVFixture(t *testing.T, dir string, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		for j := 0; j < 60; j++ {
			fmt.Fprintf(&b, "%.4f,", float64(i*60+j%17)/1000)
		}
		if i%2 == 0 {
			b.WriteString("R\n")
		} else {
			b.WriteString("M\n")
		}
	}
	path := filepath.Join(dir, "sonar.all-data")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// chdir moves the test into dir so run artifacts (plot logs, any model file)
// land in a scratch directory.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestRunWithoutModelNameWritesNothing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	csv := sonarCSVFixture(t, dir, 20)
	modelDir := filepath.Join(dir, "remote")

	Run(RunConfig{
		DataPath:  csv,
		ModelDir:  modelDir,
		ModelName: "",
		BatchSize: 4,
		TestSplit: 0.2,
		Epochs:    1,
		LR:        0.01,
		Momentum:  0.5,
		Seed:      42,
	})

	require.NoFileExists(t, filepath.Join(dir, "sonar_model"))
	require.NoDirExists(t, modelDir)
}

func TestRunWithoutModelDirSavesLocallyOnly(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	csv := sonarCSVFixture(t, dir, 20)
	model := filepath.Join(dir, "sonar_model")

	Run(RunConfig{
		DataPath:  csv,
		ModelName: model,
		BatchSize: 4,
		TestSplit: 0.2,
		Epochs:    1,
		LR:        0.01,
		Momentum:  0.5,
		Seed:      42,
	})

	require.FileExists(t, model)
	require.NoDirExists(t, filepath.Join(dir, "remote"))
}

func TestSaveLoadModelRoundTrip(t *testing.T) {
	defer torch.FinishGC()
	net := MakeSonarDNN(torch.NewDevice("cpu"))

	path := filepath.Join(t.TempDir(), "sonar_model")
	SaveModel(net, path)
	loaded := LoadModel(path)

	features := make([]float32, featureDim)
	for i := range features {
		features[i] = float32(i) / featureDim
	}
	wantLabel, wantProb := Predict(net, features)
	gotLabel, gotProb := Predict(loaded, features)
	require.Equal(t, wantLabel, gotLabel)
	require.InDelta(t, wantProb, gotProb, 1e-6)
}
