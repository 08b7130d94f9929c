package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/devtools/internal/domain/repositories"
	browserRepo "github.com/rios0rios0/devtools/internal/infrastructure/repositories/browser"
	consoleRepo "github.com/rios0rios0/devtools/internal/infrastructure/repositories/console"
	esbuildRepo "github.com/rios0rios0/devtools/internal/infrastructure/repositories/esbuild"
	fsRepo "github.com/rios0rios0/devtools/internal/infrastructure/repositories/filesystem"
	gitRepo "github.com/rios0rios0/devtools/internal/infrastructure/repositories/git"
	karmaRepo "github.com/rios0rios0/devtools/internal/infrastructure/repositories/karma"
)

// RegisterProviders registers all repository providers with the DIG container,
// each one bound to the domain interface it implements.
func RegisterProviders(container *dig.Container) error {
	providers := []any{
		func() domainRepos.GitRepository { return gitRepo.NewGitRepository() },
		func() domainRepos.PackageRepository { return fsRepo.NewPackageRepository() },
		func() domainRepos.ChangelogRepository { return fsRepo.NewChangelogRepository() },
		func() domainRepos.GlobRepository { return fsRepo.NewGlobRepository() },
		func() domainRepos.WatcherRepository { return fsRepo.NewWatcherRepository() },
		func() domainRepos.ConsoleRepository { return consoleRepo.NewConsoleRepository() },
		func() domainRepos.BundlerRepository { return esbuildRepo.NewBundlerRepository() },
		func() domainRepos.RunnerRepository { return karmaRepo.NewRunnerRepository() },
		func() domainRepos.BrowserRepository { return browserRepo.NewBrowserRepository() },
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}
