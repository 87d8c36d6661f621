package ml

import (
	"log"

	"sonar/data"
	"sonar/util"

	torch "github.com/wangkuiyi/gotorch"
	F "github.com/wangkuiyi/gotorch/nn/functional"
)

// Report the mean training loss every reportEvery minibatches.
const reportEvery = 6

// lossMeter sums per-batch losses between progress reports.
type lossMeter struct {
	sum   float32
	count int
}

func (m *lossMeter) add(loss float32) {
	m.sum += loss
	m.count++
}

func (m *lossMeter) ready() bool { return m.count == reportEvery }

func (m *lossMeter) mean() float32 { return m.sum / float32(m.count) }

func (m *lossMeter) reset() {
	m.sum = 0
	m.count = 0
}

// Train runs one epoch of SGD with momentum over the training loader,
// updating net's parameters in place.
func Train(net *SonarDNN, device torch.Device, loader *data.Loader, opt torch.Optimizer, epoch int) {
	net.Train(true)

	var meter lossMeter
	batchIndex := 0
	for loader.Scan() {
		torch.GC()
		features, target := loader.Minibatch()
		opt.ZeroGrad()
		output := net.Forward(features.To(device, features.Dtype()))
		loss := F.BinaryCrossEntropy(output, target.To(device, target.Dtype()), torch.Tensor{}, "mean")
		loss.Backward()
		opt.Step()

		meter.add(loss.Item().(float32))
		batchIndex++
		if meter.ready() {
			log.Printf("[%d, %5d] loss: %.3f", epoch, batchIndex, meter.mean())
			meter.reset()
		}
	}
}

// Test evaluates net over the evaluation loader and reports the average loss
// and the classification accuracy. Parameters are left untouched.
func Test(net *SonarDNN, device torch.Device, loader *data.Loader, epoch int) {
	avgLoss, correct, slots := evaluate(net, device, loader)
	accuracy := 100 * float32(correct) / float32(slots)
	log.Printf("Test set: average loss: %.4f, accuracy: %d/%d (%.0f%%)", avgLoss, correct, slots, accuracy)
	util.PlotLogger.Printf("epoch=%d test_loss=%.4f accuracy=%.2f", epoch, avgLoss, accuracy)
}

// evaluate runs one inference pass over the loader and returns the average
// loss, the correct-prediction count, and the number of prediction slots.
// The module is returned to training mode afterwards.
func evaluate(net *SonarDNN, device torch.Device, loader *data.Loader) (avgLoss float32, correct int64, slots int) {
	net.Train(false)
	defer net.Train(true)

	testLoss := float32(0)
	batches := 0
	for loader.Scan() {
		torch.GC()
		features, target := loader.Minibatch()
		target = target.To(device, target.Dtype())
		output := net.Forward(features.To(device, features.Dtype()))
		pred := binarize(output, device)

		// Loss is taken on the raw probabilities, not the binarized labels.
		testLoss += F.BinaryCrossEntropy(output, target, torch.Tensor{}, "mean").Item().(float32)
		correct += pred.View(-1).Eq(target.View(-1)).Sum(map[string]interface{}{"dim": 0, "keepDim": false}).Item().(int64)
		batches++
	}

	// The accuracy denominator counts batches*batchSize slots, not examples,
	// so it diverges from the loss denominator when the last batch is short.
	return testLoss / float32(loader.Len()), correct, batches * loader.BatchSize()
}

// binarize maps each probability to a class label: values below 0.5 become
// 0, everything else (0.5 included) becomes 1. The threshold tensor is built
// on device so the comparison never mixes devices with output.
func binarize(output torch.Tensor, device torch.Device) torch.Tensor {
	half := torch.Full(output.Shape(), 0.5, false).To(device, output.Dtype())
	return torch.Add(output, half, 1).CastTo(torch.Long).CastTo(torch.Float)
}

// thresholdLabel is the scalar form of binarize.
func thresholdLabel(p float32) float32 {
	if p < 0.5 {
		return 0
	}
	return 1
}
