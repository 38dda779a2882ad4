package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"appstruct/internal/app"
)

type rootFlags struct {
	dir      string
	dryRun   bool
	verbose  bool
	quiet    bool
	dirPerm  string
	filePerm string
}

// NewRootCmd собирает корневую команду. Без аргументов она создаёт каркас в текущем каталоге.
func NewRootCmd(version string) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   "appstruct",
		Short: "Создаёт недостающие каталоги и файлы-заглушки FastAPI-бэкенда",
		Long: `appstruct проверяет структуру app/ в базовом каталоге и создаёт недостающее:
каталоги app/, app/utils/, app/routers/ и файлы-заглушки.
Существующие файлы не перезаписываются, повторный запуск безопасен.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dperm, err := parsePerm(f.dirPerm, 0o755)
			if err != nil {
				return errors.Wrap(err, "неверные права --dir-perm")
			}
			fperm, err := parsePerm(f.filePerm, 0o644)
			if err != nil {
				return errors.Wrap(err, "неверные права --file-perm")
			}

			return app.Run(app.Options{
				BaseDir:  f.dir,
				DryRun:   f.dryRun,
				Verbose:  f.verbose,
				Quiet:    f.quiet,
				DirPerm:  dperm,
				FilePerm: fperm,
				Version:  version,
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
			})
		},
	}

	flags := root.Flags()
	flags.StringVarP(&f.dir, "dir", "C", "", "Базовый каталог (по умолчанию текущий)")
	flags.BoolVarP(&f.dryRun, "dry-run", "n", false, "Только показать, что будет создано")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Подробный вывод")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Тихий режим (подавить обычные сообщения)")
	flags.StringVar(&f.dirPerm, "dir-perm", "0755", "Права для каталогов (восьмерично)")
	flags.StringVar(&f.filePerm, "file-perm", "0644", "Права для файлов (восьмерично)")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(newVersionCmd(version))
	return root
}

func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

func parsePerm(s string, def os.FileMode) (os.FileMode, error) {
	ss := strings.TrimSpace(s)
	if ss == "" {
		return def, nil
	}
	// base=0 понимает 0o755; "755" без префикса тоже считаем восьмеричным.
	if !strings.HasPrefix(ss, "0") {
		ss = "0" + ss
	}
	u, err := strconv.ParseUint(ss, 0, 32)
	if err != nil {
		return 0, err
	}
	if u == 0 {
		return 0, errors.Errorf("%s: нулевые права недопустимы", s)
	}
	if u > 0o777 {
		return 0, errors.Errorf("%s: допустимы только биты 0777", s)
	}
	return os.FileMode(u), nil
}
