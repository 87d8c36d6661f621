package ml

import (
	"log"
	"math/rand"

	"sonar/data"
	"sonar/storage"
	"sonar/util"

	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn/initializer"
)

// RunConfig carries the hyperparameters for one training run. It is filled
// once from the command line and read-only afterwards.
type RunConfig struct {
	DataPath  string
	ModelDir  string
	ModelName string
	BatchSize int
	TestSplit float64
	Epochs    int
	LR        float64
	Momentum  float64
	Seed      int64
}

// Run trains the sonar classifier, evaluating after every epoch, and saves
// the final parameters when a model name is configured. Any failure is fatal
// to the process.
func Run(cfg RunConfig) {
	var device torch.Device
	if torch.IsCUDAAvailable() {
		log.Println("CUDA is valid")
		device = torch.NewDevice("cuda")
	} else {
		log.Println("No CUDA found; CPU only")
		device = torch.NewDevice("cpu")
	}

	initializer.ManualSeed(cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))
	util.InitPlotLogger("eval")

	if err := data.DownloadIfMissing(cfg.DataPath); err != nil {
		log.Fatalf("Cannot fetch dataset: %v", err)
	}
	trainLoader, testLoader, err := data.LoadData(cfg.DataPath, cfg.TestSplit, cfg.BatchSize, rng)
	if err != nil {
		log.Fatalf("Cannot load dataset: %v", err)
	}

	net := MakeSonarDNN(device)
	opt := torch.SGD(cfg.LR, cfg.Momentum, 0, 0, false)
	opt.AddParameters(net.Parameters())
	defer torch.FinishGC()

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		trainLoader.Reset()
		testLoader.Reset()
		Train(net, device, trainLoader, opt, epoch)
		Test(net, device, testLoader, epoch)
	}

	if cfg.ModelName == "" {
		return
	}
	SaveModel(net, cfg.ModelName)
	if cfg.ModelDir != "" {
		if err := storage.SaveModel(cfg.ModelDir, cfg.ModelName); err != nil {
			log.Fatalf("Cannot upload model to %s: %v", cfg.ModelDir, err)
		}
	}
}
