package config

import "flag"

// Flags holds the command-line counterparts of the Config settings.
type Flags struct {
	fs   *flag.FlagSet
	vals Config
}

// RegisterFlags defines a flag per setting on fs with Default values.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	def := Default()
	f := &Flags{fs: fs}
	v := &f.vals

	fs.StringVar(&v.Detector, "detector", def.Detector, "Детектор границ: canny, sobel, opencv (нужна сборка с -tags gocv)")
	fs.Float64Var(&v.Low, "low", def.Low, "Нижний порог Canny, доля от максимального градиента")
	fs.Float64Var(&v.High, "high", def.High, "Верхний порог Canny, доля от максимального градиента")
	fs.Float64Var(&v.Radius, "radius", def.Radius, "Радиус (sigma) размытия перед поиском границ")
	fs.Float64Var(&v.Threshold, "threshold", def.Threshold, "Порог модуля градиента для Sobel")
	fs.IntVar(&v.Workers, "workers", def.Workers, "Потоки")
	fs.BoolVar(&v.Parallel, "parallel", def.Parallel, "Запускать четыре прохода по краям параллельно")
	fs.IntVar(&v.DPI, "dpi", def.DPI, "DPI для рендеринга PDF")
	fs.IntVar(&v.Quality, "quality", def.Quality, "Качество JPEG (1-100)")
	fs.StringVar(&v.ReportPath, "report", def.ReportPath, "Путь к YAML-отчету об обрезке")
	fs.StringVar(&v.EdgesDir, "edges-dir", def.EdgesDir, "Папка для карт границ")
	fs.BoolVar(&v.ShowStats, "stats", def.ShowStats, "Показать время и память")
	fs.BoolVar(&v.Verbose, "verbose", def.Verbose, "Отладочный вывод")
	return f
}

// Apply copies into cfg only the flags that were set on the command line,
// leaving file and environment values for the rest.
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "detector":
			cfg.Detector = f.vals.Detector
		case "low":
			cfg.Low = f.vals.Low
		case "high":
			cfg.High = f.vals.High
		case "radius":
			cfg.Radius = f.vals.Radius
		case "threshold":
			cfg.Threshold = f.vals.Threshold
		case "workers":
			cfg.Workers = f.vals.Workers
		case "parallel":
			cfg.Parallel = f.vals.Parallel
		case "dpi":
			cfg.DPI = f.vals.DPI
		case "quality":
			cfg.Quality = f.vals.Quality
		case "report":
			cfg.ReportPath = f.vals.ReportPath
		case "edges-dir":
			cfg.EdgesDir = f.vals.EdgesDir
		case "stats":
			cfg.ShowStats = f.vals.ShowStats
		case "verbose":
			cfg.Verbose = f.vals.Verbose
		}
	})
}
