package model

// Defaults returns the starting form: everything empty except the work mode
// and git strategy most projects keep.
func Defaults() ProjectInput {
	return ProjectInput{
		DocMeta: DocMeta{
			WorkMode: "바이브코딩 (Claude Code 활용)",
		},
		Context: Context{
			CoreScenarios: TextList{},
			TopRisks:      TextList{},
		},
		Tech: Tech{
			GitStrategy: "GitHub Flow (main + feature branches)",
			Envs:        TextList{},
		},
	}
}

// Sample returns a fully filled example project.
func Sample() ProjectInput {
	return ProjectInput{
		DocMeta: DocMeta{
			Idea:     "여러 사용자가 동시에 편집하는 실시간 협업 웹 문서 에디터",
			DocTitle: "실시간 협업 편집기 개발 프로세스 정의서",
			Scope:    "MVP v1.0 개발 범위",
			Audience: "개발팀 (백엔드 + 프론트엔드)",
			WorkMode: "바이브코딩 (Claude Code 활용)",
		},
		Context: Context{
			ProductOneLiner: "실시간 협업 문서 편집기 — 여러 사용자가 동시에 편집 가능",
			CoreScenarios: TextList{
				"사용자가 새 문서를 생성한다",
				"사용자가 문서를 실시간으로 공동 편집한다",
				"사용자가 문서를 팀원에게 공유한다",
			},
			QualityBars: "응답시간 < 200ms, 가용성 99.9%, 동시 편집 지연 < 100ms",
			TopRisks: TextList{
				"동시 편집 충돌 (CRDT/OT 복잡성)",
				"데이터 유실 (네트워크 단절 시)",
				"대규모 문서 성능 저하",
			},
		},
		Tech: Tech{
			TechStack:   "TypeScript, Next.js 15, Hono, PostgreSQL, Redis, Y.js",
			GitStrategy: "GitHub Flow (main + feature branches)",
			Deployment:  "Docker + Vercel (프론트) + AWS ECS (백엔드)",
			Envs:        TextList{"dev", "staging", "prod"},
			CICDTools:   "GitHub Actions + Vercel Auto Deploy",
		},
		ClaudeRules: ClaudeRules{
			DoDont:              "DO: 단일 책임 함수, 테스트 먼저, 커밋 메시지에 이슈 번호\nDON'T: 500줄 이상 파일, any 타입, console.log 방치",
			TaskSlicingRule:     "하나의 PR은 하나의 기능/버그만 포함, 300줄 이내 권장",
			QualityGates:        "lint + unit test + type check 통과 필수",
			ExperimentVsProduct: "실험은 experiment/ 브랜치, 프로덕션은 main 기준",
			ObservabilityRules:  "구조화 로깅 필수, 에러는 Sentry 연동",
		},
		Policies: Policies{
			DecisionPolicy: "ADR로 기록, 72시간 내 리뷰",
			ReviewPolicy:   "최소 1인 승인, 셀프머지 금지",
			SecurityPolicy: "시크릿은 환경변수, 의존성 주간 스캔",
		},
		TemplateStyles: TemplateStyles{
			IssueTemplateStyle:   "문제/원인/해결 3단 구조",
			ADRTemplateStyle:     "상태/컨텍스트/결정/결과 4단 구조",
			PRTemplateStyle:      "변경사항/테스트/체크리스트",
			TestPlanStyle:        "시나리오/기대결과/실행조건",
			ReleaseTemplateStyle: "버전/변경로그/롤백 계획",
		},
	}
}
