package processor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/glesirok/pytestid/pkg/caseid"
	"github.com/glesirok/pytestid/pkg/engine"
	"github.com/glesirok/pytestid/pkg/filter"
	"github.com/glesirok/pytestid/pkg/manifest"
)

const (
	manifestGlob = "**/*.{yaml,yml,json}"
	outputSuffix = ".out.yaml"
)

// Report 是写入输出文件的结果文档
type Report struct {
	ProjectRoot string           `yaml:"project_root"`
	Results     []*engine.Result `yaml:"results"`
}

// Processor 批量处理转换清单
type Processor struct {
	filters []*filter.Filter
	out     io.Writer
}

// NewProcessor 创建处理器，filterExprs 为空时保留所有结果
func NewProcessor(filterExprs []string, out io.Writer) (*Processor, error) {
	filters := make([]*filter.Filter, 0, len(filterExprs))
	for _, expr := range filterExprs {
		f, err := filter.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("parse filter '%s': %w", expr, err)
		}
		filters = append(filters, f)
	}

	if out == nil {
		out = os.Stdout
	}

	return &Processor{filters: filters, out: out}, nil
}

// OutputPath 返回清单对应的结果文件路径，如 cases.yaml -> cases.out.yaml
func OutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + outputSuffix
}

// Translate 执行清单中的所有请求并按条件过滤结果
func (p *Processor) Translate(m *manifest.Manifest) (*Report, error) {
	eng := engine.NewEngine(m.ProjectRoot)
	report := &Report{ProjectRoot: eng.ProjectRoot(), Results: []*engine.Result{}}
	log.Debugf("translating %d requests, project root: %s", len(m.Requests), eng.ProjectRoot())

	for i, req := range m.Requests {
		res, err := eng.Apply(req)
		if err != nil {
			// node id 格式错误只影响这一条请求
			if !errors.Is(err, caseid.ErrMalformedNodeID) {
				return nil, fmt.Errorf("request %d: %w", i, err)
			}
			log.Warnf("request %d: %v", i, err)
			report.Results = append(report.Results, &engine.Result{
				Action: req.Action,
				Input:  req.Input(),
				Error:  err.Error(),
			})
			continue
		}

		if m.Where != nil && !m.Where.Match(res.Selector) {
			log.Debugf("request %d: %s excluded by where", i, res.Selector)
			continue
		}
		if !filter.MatchAny(p.filters, res.Selector) {
			log.Debugf("request %d: %s excluded by filters", i, res.Selector)
			continue
		}

		report.Results = append(report.Results, res)
	}

	return report, nil
}

// ProcessFile 处理单个清单文件
func (p *Processor) ProcessFile(inputPath, outputPath string, dryRun bool) error {
	m, err := manifest.LoadFromFile(inputPath)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	report, err := p.Translate(m)
	if err != nil {
		return err
	}

	// 序列化 YAML（保持2空格缩进）
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if dryRun {
		fmt.Fprintf(p.out, "=== Dry-run: %s ===\n", inputPath)
		fmt.Fprintln(p.out, buf.String())
		return nil
	}

	if outputPath == "" {
		outputPath = OutputPath(inputPath)
	}

	if err := os.WriteFile(outputPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	log.Infof("translated %d of %d requests: %s -> %s", len(report.Results), len(m.Requests), inputPath, outputPath)
	return nil
}

// ProcessDirectory 批量处理目录下的所有清单，跳过已生成的结果文件
func (p *Processor) ProcessDirectory(inputDir, outputDir string, dryRun bool) error {
	// 确保输出目录存在
	if !dryRun && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	// 遍历目录
	return filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		if !isManifest(relPath) {
			return nil
		}

		var outputPath string
		if outputDir != "" {
			outputPath = filepath.Join(outputDir, OutputPath(relPath))
			if !dryRun {
				if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
		} else {
			outputPath = OutputPath(path)
		}

		fmt.Fprintf(p.out, "Processing: %s\n", path)
		if err := p.ProcessFile(path, outputPath, dryRun); err != nil {
			return fmt.Errorf("process %s: %w", path, err)
		}

		return nil
	})
}

func isManifest(relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	if strings.HasSuffix(slashed, outputSuffix) {
		return false
	}
	matched, err := doublestar.Match(manifestGlob, slashed)
	return err == nil && matched
}
