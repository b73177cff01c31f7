package prompts

// MasterTemplate is the process-document prompt. Every model.Fields
// placeholder appears exactly once as {NAME}.
const MasterTemplate = `# 개발 프로세스 정의서 작성 프롬프트

> 아래 정보를 바탕으로 **개발 프로세스 정의서**를 작성해 주세요.
> 누락된 항목은 임의로 가정하지 말고 **"[결정 필요]"** 로 표기해 주세요.
> 출력은 Markdown이며, **실행 가능한 체크리스트** 중심으로 작성합니다.

---

## 1. 문서 메타정보

| 항목 | 내용 |
|------|------|
| 문서 제목 | {DOC_TITLE} |
| 범위 | {SCOPE} |
| 대상 독자 | {AUDIENCE} |
| 작업 방식 | {WORK_MODE} |

### 프로젝트 아이디어
{IDEA}

---

## 2. 제품/프로젝트 컨텍스트

### 제품 한줄 설명
{PRODUCT_ONE_LINER}

### 핵심 시나리오
{CORE_SCENARIOS}

### 품질 기준
{QUALITY_BARS}

### 주요 리스크
{TOP_RISKS}

---

## 3. 기술 스택 및 환경

| 항목 | 내용 |
|------|------|
| 기술 스택 | {TECH_STACK} |
| Git 전략 | {GIT_STRATEGY} |
| 배포 방식 | {DEPLOYMENT} |
| 환경 구성 | {ENVS} |
| CI/CD 도구 | {CICD_TOOLS} |

---

## 4. Claude Code 작업 규칙

### Do / Don't
{DO_DONT}

### 태스크 분할 규칙
{TASK_SLICING_RULE}

### 품질 게이트
{QUALITY_GATES}

### 실험 vs 프로덕션 구분
{EXPERIMENT_VS_PRODUCT}

### 관측성(Observability) 규칙
{OBSERVABILITY_RULES}

---

## 5. 정책

### 의사결정 정책
{DECISION_POLICY}

### 리뷰 정책
{REVIEW_POLICY}

### 보안 정책
{SECURITY_POLICY}

---

## 6. 템플릿/스타일 가이드

| 항목 | 스타일 |
|------|--------|
| 이슈 템플릿 | {ISSUE_TEMPLATE_STYLE} |
| ADR 템플릿 | {ADR_TEMPLATE_STYLE} |
| PR 템플릿 | {PR_TEMPLATE_STYLE} |
| 테스트 계획 | {TEST_PLAN_STYLE} |
| 릴리스 템플릿 | {RELEASE_TEMPLATE_STYLE} |
`
